// Package acl is the anti-corruption layer between the quoting domain and the
// two upstream platforms.
//
// [ShopifyClient] implements ports.OrderPlatform and [Cin7Client] implements
// ports.InventoryPlatform. Both embed [BaseAdapter] and keep their wire DTOs
// unexported, so Shopify and Cin7 field names never reach the domain.
//
// Every failure, whether a transport error, an open circuit, a non-2xx
// status or a malformed body, is returned as a *domain.IntegrationError
// carrying the service, the operation and, when there was a response, its
// status code and a capped body.
package acl
