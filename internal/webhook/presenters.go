package webhook

import (
	"errors"

	"scm-event-dispatcher/internal/rescan"
	pkgResponse "scm-event-dispatcher/pkg/response"
)

var errInvalidLimit = errors.New("limit must be a positive integer")

type headResp struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	SHA  string `json:"sha,omitempty"`
}

type deliveryResp struct {
	DeliveryID  string               `json:"delivery_id"`
	Kind        string               `json:"kind"`
	Type        string               `json:"type"`
	Repository  string               `json:"repository"`
	Target      string               `json:"target"`
	TargetID    string               `json:"target_id"`
	Description string               `json:"description"`
	Heads       []headResp           `json:"heads,omitempty"`
	DeliveredAt pkgResponse.DateTime `json:"delivered_at"`
}

type listDeliveriesResp struct {
	Deliveries []deliveryResp `json:"deliveries"`
	Total      int            `json:"total"`
}

func newListDeliveriesResp(ds []rescan.Delivery) listDeliveriesResp {
	out := make([]deliveryResp, len(ds))
	for i, d := range ds {
		heads := make([]headResp, len(d.Heads))
		for j, hd := range d.Heads {
			heads[j] = headResp{Name: hd.Name, Kind: string(hd.Kind), SHA: hd.SHA}
		}
		out[i] = deliveryResp{
			DeliveryID:  d.DeliveryID,
			Kind:        string(d.Kind),
			Type:        string(d.Type),
			Repository:  d.Repository,
			Target:      string(d.Target),
			TargetID:    d.TargetID,
			Description: d.Description,
			Heads:       heads,
			DeliveredAt: pkgResponse.DateTime(d.DeliveredAt),
		}
	}
	return listDeliveriesResp{Deliveries: out, Total: len(out)}
}
