package handlers

import (
	"foodline-dispatch/internal/domain"
	"foodline-dispatch/internal/intake"
)

func (r submitOrderRequest) toModel() domain.OrderDetails {
	return domain.OrderDetails{
		CustomerName: r.CustomerName,
		Address:      r.Address,
		ImageRef:     r.ImageRef,
		ItemTotal:    r.ItemTotal,
		GST:          r.GST,
		PaymentMode:  domain.PaymentMode(r.PaymentMode),
		PaymentRef:   r.PaymentRef,
	}
}

func operatorToResponse(op domain.Operator) operatorDTO {
	return operatorDTO{
		ID:     op.ID,
		Role:   op.Role,
		Status: op.Status,
	}
}

func operatorsToResponse(list []domain.Operator) []operatorDTO {
	out := make([]operatorDTO, 0, len(list))
	for _, op := range list {
		out = append(out, operatorToResponse(op))
	}
	return out
}

func orderToResponse(o *domain.Order) orderDTO {
	return orderDTO{
		Token:      o.Token,
		Status:     o.Status,
		CustomerID: o.CustomerID,
		OperatorID: o.AssignedOperator(),
		Address:    o.Details.Address,
		ItemTotal:  o.Details.ItemTotal,
		GST:        o.Details.GST,
		FinalPrice: o.Details.FinalPrice,
		Payment:    string(o.Details.PaymentMode),
	}
}

func replyToResponse(rep intake.Reply) intakeReplyDTO {
	return intakeReplyDTO{
		Prompt:     rep.Prompt,
		Done:       rep.Done,
		Token:      rep.Token,
		FinalPrice: rep.FinalPrice,
	}
}
