package pricing

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xeroscommerce/pricing-service/api/responses"
	"github.com/xeroscommerce/pricing-service/api/validators"
	cartsvc "github.com/xeroscommerce/pricing-service/internal/cart"
	pricingsvc "github.com/xeroscommerce/pricing-service/internal/pricing"
	pkgerrors "github.com/xeroscommerce/pricing-service/pkg/errors"
	"github.com/xeroscommerce/pricing-service/pkg/logger"
	"github.com/xeroscommerce/pricing-service/pkg/money"
)

const maxPreviewQuantity = 1_000_000

// UnitPrice resolves the per-unit price for a product, optionally on behalf
// of an identified customer.
func UnitPrice(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customerID, err := validators.ParseOptionalQueryID(r, "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.GetUnitPrice(r.Context(), productID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, mapDomainError(err))
			return
		}

		responses.WriteSuccess(w, newUnitPriceResponse(quote))
	}
}

// PreviewPrice resolves the quantity-aware preview price for a product.
func PreviewPrice(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customerID, err := validators.ParseOptionalQueryID(r, "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, maxPreviewQuantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.PreviewPrice(r.Context(), productID, customerID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, mapDomainError(err))
			return
		}

		responses.WriteSuccess(w, newPreviewResponse(quote, quantity))
	}
}

// CartQuote prices every line of the submitted cart and returns the total.
func CartQuote(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart pricing service unavailable"))
			return
		}

		var payload CartQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.PriceCart(r.Context(), payload.toCartLines(), payload.CustomerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, mapDomainError(err))
			return
		}

		responses.WriteSuccess(w, newCartQuoteResponse(result))
	}
}

// mapDomainError translates pricing sentinels into coded errors so the
// response layer picks the right status. Coded errors pass through untouched.
func mapDomainError(err error) error {
	if err == nil || pkgerrors.As(err) != nil {
		return err
	}
	switch {
	case errors.Is(err, cartsvc.ErrEmptyCart):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cart must contain at least one line")
	case errors.Is(err, pricingsvc.ErrMissingPublicPrice):
		return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "product has no public price")
	case errors.Is(err, money.ErrInvalidMoneyValue):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid monetary value")
	default:
		return err
	}
}
