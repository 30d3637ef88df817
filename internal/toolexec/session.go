package toolexec

// SessionContext is the cloud account context for a bootstrap run.
//
// The az CLI keeps its active subscription in global state outside this
// process. Provisioning calls pass the subscription explicitly instead of
// relying on that state.
type SessionContext struct {
	SubscriptionID string
	TenantID       string
}

// SubscriptionScope returns the ARM scope of the subscription.
func (s SessionContext) SubscriptionScope() string {
	return "/subscriptions/" + s.SubscriptionID
}

// AzureArgs appends the explicit subscription selector to args.
func (s SessionContext) AzureArgs(args ...string) []string {
	if s.SubscriptionID == "" {
		return args
	}
	return append(args, "--subscription", s.SubscriptionID)
}
