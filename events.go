package realip

const (
	eventAddressNotFound = "address_not_found"
)
