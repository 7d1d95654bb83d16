package models

// FreeOrdersState tracks the "first N orders free" promotion. ConsumedOrders
// records which order IDs spent a free slot so a retried checkout cannot
// spend two slots, and so deleting a consuming order can give the slot back.
type FreeOrdersState struct {
	RemainingFreeOrders int             `json:"remainingFreeOrders"`
	TotalFreeOrders     int             `json:"totalFreeOrders"`
	HasShownExitPopup   bool            `json:"hasShownExitPopup"`
	HasShownOfferPopup  bool            `json:"hasShownOfferPopup"`
	ConsumedOrders      map[string]bool `json:"consumedOrders,omitempty"`
}

func DefaultFreeOrdersState(total int) *FreeOrdersState {
	return &FreeOrdersState{
		RemainingFreeOrders: total,
		TotalFreeOrders:     total,
		ConsumedOrders:      make(map[string]bool),
	}
}
