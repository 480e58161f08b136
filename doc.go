// Package acis is a client for ACIS Web Services Version 2.
//
// The Applied Climate Information System (ACIS) serves climate observations
// and derived products for North American stations and grids; see
// <https://www.rcc-acis.org/docs_webservices.html> for the protocol.
//
// Client executes raw calls for callers that want to build their own params
// objects and interpret the results themselves. The request types (StnMeta,
// StnData, MultiStnData) and their result counterparts provide a uniform
// interface over the common call types, and the stream types expose the
// restricted CSV output for large requests one record at a time.
package acis
