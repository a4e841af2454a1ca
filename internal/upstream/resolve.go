package upstream

import "net/url"

// The backend's exact route for a few logical operations has drifted
// between deployments. Each Resolution lists the known candidates in
// preference order; Do tries them until one does not 404 and reports
// (log + metric) whenever a non-primary entry serves the request, so
// upstream drift is visible instead of silently absorbed.

// Resolution is one logical operation with its ordered candidate paths.
type Resolution struct {
	Operation  string
	Candidates []string
	Reason     string
}

var (
	// CheckoutResolution: the cart router owns checkout today; older
	// deployments exposed it from the orders router.
	CheckoutResolution = Resolution{
		Operation: "checkout",
		Candidates: []string{
			"/cart/checkout",
			"/checkout",
			"/orders/checkout",
			"/orders/create",
			"/orders",
		},
		Reason: "checkout moved between the cart and orders routers across backend releases",
	}

	// PaymentMethodsResolution: hyphen/underscore and master-prefix
	// variants have all been observed in the wild.
	PaymentMethodsResolution = Resolution{
		Operation: "payment-methods",
		Candidates: []string{
			"/payment-methods",
			"/payment_methods",
			"/master/payment-methods",
			"/master/payment_methods",
		},
		Reason: "route casing and master prefix differ between backend releases",
	}

	// AvatarUploadResolution: profile uploads were renamed twice.
	AvatarUploadResolution = Resolution{
		Operation: "avatar-upload",
		Candidates: []string{
			"/users/avatar",
			"/users/profile/avatar",
			"/users/profile/photo",
		},
		Reason: "avatar endpoint was renamed across backend releases",
	}
)

// OrderDetailCandidates returns the detail paths for one order id; some
// backend releases nest the detail route under /orders/detail.
func OrderDetailCandidates(id string) []string {
	escaped := url.PathEscape(id)
	return []string{
		"/orders/" + escaped,
		"/orders/detail/" + escaped,
	}
}
