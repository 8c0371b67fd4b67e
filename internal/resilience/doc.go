// Package resilience groups the fault tolerance building blocks used
// around network calls: circuit breakers for the summarization backends
// and feed hosts, and retry with exponential backoff for transient
// failures.
//
//	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchFeed(url)
//	})
//
//	err := retry.WithBackoff(ctx, retry.AIAPIConfig(), func() error {
//	    return callSummarizer()
//	})
package resilience
