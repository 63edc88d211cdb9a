package promotion

import (
	"context"
	"sort"
	"time"

	"github.com/xeroscommerce/pricing-service/pkg/types"
)

// rank orders the targeting signals a candidate can match on. Lower wins.
// An item that names the customer's number outranks catalog-level targeting;
// an explicit customer-id list on the catalog outranks a client-type match;
// a fully untargeted candidate ranks last.
type rank int

const (
	rankExplicitCustomerNumber rank = iota
	rankExplicitCustomerID
	rankClientType
	rankUntargeted
)

// Lookup resolves the single best-matching catalog promotion for a product
// and an identified customer.
type Lookup struct {
	source CandidateSource
	now    func() time.Time
}

// NewLookup wires the lookup to its candidate source. The clock defaults to
// time.Now and is overridable for tests.
func NewLookup(source CandidateSource) *Lookup {
	return &Lookup{source: source, now: time.Now}
}

// WithClock replaces the time source.
func (l *Lookup) WithClock(now func() time.Time) *Lookup {
	l.now = now
	return l
}

// FindApplicable returns the top-ranked promo item for the product, or nil
// when no catalog admits the customer. Catalog promotions require identity:
// an anonymous customer or one without a customer number never matches.
func (l *Lookup) FindApplicable(ctx context.Context, product *types.ProductSnapshot, customer *types.CustomerSnapshot) (*types.PromotionItem, error) {
	if product == nil || customer == nil || customer.CustomerNumber == "" {
		return nil, nil
	}

	candidates, err := l.source.ActiveCandidates(ctx, product.ID, l.now())
	if err != nil {
		return nil, err
	}
	return SelectBest(candidates, customer), nil
}

// SelectBest filters the candidates against the customer and applies the
// ranking. Ordering: rank, then lowest promo price, then highest item id
// (most recently created entry wins a full tie).
func SelectBest(candidates []Candidate, customer *types.CustomerSnapshot) *types.PromotionItem {
	if customer == nil || customer.CustomerNumber == "" {
		return nil
	}

	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.admits(customer) {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		ri, rj := eligible[i].rankFor(customer), eligible[j].rankFor(customer)
		if ri != rj {
			return ri < rj
		}
		cmp := eligible[i].Item.PromoPrice.Cmp(eligible[j].Item.PromoPrice)
		if cmp != 0 {
			return cmp < 0
		}
		return eligible[i].Item.ID > eligible[j].Item.ID
	})

	item := eligible[0].Item
	return &item
}

// admits reports whether both the catalog-level and item-level targeting
// accept the customer.
func (c Candidate) admits(customer *types.CustomerSnapshot) bool {
	if c.TargetClientType != nil && *c.TargetClientType != customer.EffectiveClientType().String() {
		return false
	}
	if len(c.TargetCustomerIDs) > 0 && !containsInt64(c.TargetCustomerIDs, customer.ID) {
		return false
	}
	if len(c.Item.AllowedCustomerNumbers) > 0 && !containsString(c.Item.AllowedCustomerNumbers, customer.CustomerNumber) {
		return false
	}
	return true
}

func (c Candidate) rankFor(customer *types.CustomerSnapshot) rank {
	switch {
	case containsString(c.Item.AllowedCustomerNumbers, customer.CustomerNumber):
		return rankExplicitCustomerNumber
	case containsInt64(c.TargetCustomerIDs, customer.ID):
		return rankExplicitCustomerID
	case c.TargetClientType != nil:
		return rankClientType
	default:
		return rankUntargeted
	}
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func containsInt64(list []int64, want int64) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
