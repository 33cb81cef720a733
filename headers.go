package realip

// Header names of the default precedence table, in precedence order.
const (
	HeaderCFConnectingIP          = "CF-Connecting-IP"
	HeaderXClusterClientIP        = "X-Cluster-Client-IP"
	HeaderFlyClientIP             = "Fly-Client-IP"
	HeaderFastlyClientIP          = "Fastly-Client-IP"
	HeaderCloudFrontViewerAddress = "CloudFront-Viewer-Address"
	HeaderXRealIP                 = "X-Real-IP"
	HeaderXForwardedFor           = "X-Forwarded-For"
	HeaderXOriginalForwardedFor   = "X-Original-Forwarded-For"
	HeaderTrueClientIP            = "True-Client-IP"
	HeaderClientIP                = "Client-IP"

	// SourceRemoteAddr is the source name reported when the address comes
	// from the transport peer address.
	SourceRemoteAddr = "remote_addr"
)

// HeaderRule describes one recognized header and whether its value may carry
// an "address:port" form.
type HeaderRule struct {
	Name      string
	AllowPort bool
}

// defaultHeaderRules is the precedence table, highest priority first.
// Provider specific headers rank above generic forwarding headers.
var defaultHeaderRules = [...]HeaderRule{
	{Name: HeaderCFConnectingIP},
	{Name: HeaderXClusterClientIP},
	{Name: HeaderFlyClientIP},
	{Name: HeaderFastlyClientIP},
	{Name: HeaderCloudFrontViewerAddress, AllowPort: true},
	{Name: HeaderXRealIP},
	{Name: HeaderXForwardedFor},
	{Name: HeaderXOriginalForwardedFor},
	{Name: HeaderTrueClientIP},
	{Name: HeaderClientIP},
}

// DefaultHeaderRules returns a copy of the default header precedence table.
func DefaultHeaderRules() []HeaderRule {
	rules := make([]HeaderRule, len(defaultHeaderRules))
	copy(rules, defaultHeaderRules[:])
	return rules
}

func cloneHeaderRules(rules []HeaderRule) []HeaderRule {
	if rules == nil {
		return nil
	}
	cloned := make([]HeaderRule, len(rules))
	copy(cloned, rules)
	return cloned
}
