package gallery

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/youruser/collageapp/internal/collage"
)

// Order is how images are arranged before they are handed to the compositor.
type Order string

const (
	OrderUpload   Order = "upload"
	OrderNameAsc  Order = "name_asc"
	OrderNameDesc Order = "name_desc"
)

func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderUpload, nil
	case OrderUpload, OrderNameAsc, OrderNameDesc:
		return o, nil
	}
	return "", fmt.Errorf("unknown order %q", s)
}

// Sort returns a reordered copy of items. Names compare byte-wise and equal
// names keep their upload order.
func Sort(items []collage.Source, o Order) []collage.Source {
	out := slices.Clone(items)

	switch o {
	case OrderNameAsc:
		slices.SortStableFunc(out, func(a, b collage.Source) int {
			return cmp.Compare(a.Name, b.Name)
		})
	case OrderNameDesc:
		slices.SortStableFunc(out, func(a, b collage.Source) int {
			return cmp.Compare(b.Name, a.Name)
		})
	}
	return out
}
