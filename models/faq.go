package models

import "sort"

// FAQ entries are displayed in ascending Order.
type FAQ struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Order    int    `json:"order"`
}

// SortFAQs orders faqs for display, keeping the CMS order for equal keys.
func SortFAQs(faqs []FAQ) {
	sort.SliceStable(faqs, func(i, j int) bool {
		return faqs[i].Order < faqs[j].Order
	})
}
