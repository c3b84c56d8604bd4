package memory

import (
	"BankAccounts/internal/core/domain"
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// comparator orders two items by a single field.
type comparator[T any] func(a, b T) int

// paginate sorts items by the requested orders (id last, for stable pages)
// and cuts out the requested page.
func paginate[T any](
	items []T,
	req domain.PageRequest,
	fields map[string]comparator[T],
	idOf func(T) uuid.UUID,
	defaultField string,
) domain.Page[T] {
	orders := req.Sort
	if len(orders) == 0 {
		orders = []domain.SortOrder{{Field: defaultField}}
	}

	slices.SortStableFunc(items, func(a, b T) int {
		for _, o := range orders {
			cmpFn, ok := fields[o.Field]
			if !ok {
				continue
			}
			c := cmpFn(a, b)
			if o.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return strings.Compare(idOf(a).String(), idOf(b).String())
	})

	total := int64(len(items))
	start := min(req.Offset(), len(items))
	end := min(start+req.Size, len(items))
	return domain.NewPage(items[start:end], req, total)
}

func byString[T any](get func(T) string) comparator[T] {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}
