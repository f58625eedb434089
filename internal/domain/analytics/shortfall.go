package analytics

import "finsight/internal/domain/bill"

// PredictShortfall projects the balance after one month of budgeted income
// and all upcoming bills. A negative projection means bills will be missed.
func PredictShortfall(balance, monthlyIncome float64, upcomingBills []*bill.Bill) ShortfallPrediction {
	var billsTotal float64
	for _, b := range upcomingBills {
		billsTotal += b.Amount
	}

	projected := balance + monthlyIncome - billsTotal

	return ShortfallPrediction{
		Balance:            balance,
		Income:             monthlyIncome,
		UpcomingBillsTotal: billsTotal,
		ProjectedBalance:   projected,
		WillMissBills:      projected < 0,
	}
}
