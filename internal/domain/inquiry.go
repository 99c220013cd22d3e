package domain

// InquiryState is the lifecycle state of a customer inquiry.
//
// RECEIVED is the initial state. DONE, REJECTED, and CUSTOMER_REJECTED
// are terminal by convention only: transitions out of them are not
// guarded, matching the reference behavior of this system.
// CUSTOMER_REJECTED is never set by the pipeline itself; only an
// external caller can supply it.
type InquiryState string

const (
	InquiryReceived         InquiryState = "received"
	InquiryQuoted           InquiryState = "quoted"
	InquiryDone             InquiryState = "done"
	InquiryRejected         InquiryState = "rejected"
	InquiryCustomerRejected InquiryState = "customer_rejected"
)

// Inquiry is a customer inquiry for a quote on a product.
type Inquiry struct {
	InquiryID string
	Product   Product
	Side      Side
	Quantity  int64
	Price     float64
	State     InquiryState
}
