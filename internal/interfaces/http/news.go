package http

import (
	"log"
	"net/http"
	"strconv"

	"finsight/internal/domain/news"
	"finsight/internal/shared/middleware"
)

type NewsHandler struct {
	news news.Repository
}

func NewNewsHandler(newsRepo news.Repository) *NewsHandler {
	return &NewsHandler{news: newsRepo}
}

// HandleNews handles GET /api/news (?limit)
func (h *NewsHandler) HandleNews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if _, ok := r.Context().Value(middleware.UserIDKey).(int64); !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.news.ListRecent(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing news: %v", err)
		respondInternal(w, "Failed to list news", err)
		return
	}
	if items == nil {
		items = []*news.Item{}
	}

	respondData(w, http.StatusOK, items)
}
