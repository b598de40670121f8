package domain

// EligibleServices narrows the catalog to what the client may see and book, preserving catalog order.
// Without a client every available service of every country is returned (public browse).
// With a client the service must be available and in the client's country; when the client has a
// region, a service with a coverage list must cover it.
func EligibleServices(catalog []*Service, client *Client) []*Service {
	eligible := make([]*Service, 0, len(catalog))
	for _, s := range catalog {
		if IsEligible(s, client) {
			eligible = append(eligible, s)
		}
	}
	return eligible
}

// IsEligible applies the eligibility rule to a single service
func IsEligible(service *Service, client *Client) bool {
	if service == nil || !service.Available {
		return false
	}
	if client == nil {
		return true
	}
	if service.Country != client.Country {
		return false
	}
	if !client.HasRegion() {
		return true
	}
	return service.Covers(*client.Region)
}
