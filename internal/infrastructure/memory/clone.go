package memory

import "github.com/jhoicas/biocol-import-api/internal/domain/entity"

func cloneShipment(s *entity.Shipment) *entity.Shipment {
	c := *s
	if s.ExpectedDepartureDate != nil {
		t := *s.ExpectedDepartureDate
		c.ExpectedDepartureDate = &t
	}
	if s.ExpectedArrivalDate != nil {
		t := *s.ExpectedArrivalDate
		c.ExpectedArrivalDate = &t
	}
	return &c
}

func cloneInvoiceHeader(inv *entity.Invoice) *entity.Invoice {
	c := *inv
	c.Items = nil
	return &c
}

func cloneAdmissionHeader(a *entity.Admission) *entity.Admission {
	c := *a
	c.Items = nil
	return &c
}

func cloneWithdrawal(w *entity.Withdrawal) *entity.Withdrawal {
	c := *w
	c.Items = make([]*entity.WithdrawalItem, len(w.Items))
	for i, it := range w.Items {
		item := *it
		c.Items[i] = &item
	}
	return &c
}
