package domain

type ResponseKind int

const (
	ResponseLinks       ResponseKind = iota + 1 // Ordered list of labelled links
	ResponseSingleLink                          // One URL, the catalog default link
	ResponseUnavailable                         // Product known but no usable link
)

// Response is what a free-text lookup resolved to.
type Response struct {
	Section Section
	Product string
	Kind    ResponseKind
	Links   []LessonEntry // Set for ResponseLinks; marketplaces use Label for the shop name
	URL     string        // Set for ResponseSingleLink
}
