package directory

// Test-only export of the Admin SDK error mapping
var MapGoogleError = mapGoogleError
