// Package driven defines the outbound port consumed by the core
// controllers: the REST boundary of the remote document QA service.
package driven
