// Package store defines the persistence interfaces consumed by the
// service layer, together with the sentinel errors every implementation
// maps its backend failures onto.
package store
