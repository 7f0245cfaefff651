package ddi

// ZER is the runtime api, every entry of it is optional for a driver.
var ZER = newAPI("zer",
	optional("Global", "GetLastErrorDescription", "TranslateDeviceHandleToIdentifier",
		"TranslateIdentifierToDeviceHandle", "GetDefaultContext"),
)

// APIs lists every api in build order.
func APIs() []*API {
	return []*API{ZE, ZET, ZES, ZER}
}

// LookupAPI by prefix.
func LookupAPI(prefix string) *API {
	for _, a := range APIs() {
		if a.Prefix == prefix {
			return a
		}
	}
	return nil
}
