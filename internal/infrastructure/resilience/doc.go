/*
Package resilience provides a circuit breaker for outbound calls.

# Usage

	breaker := resilience.New("grpc-client", resilience.Settings{
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	count, err := resilience.Call(breaker, func() (uint32, error) {
		return client.CountPrimes(ctx, 1000)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
