// Package service implements the application's use cases over the store
// and generation boundaries: note management and quiz generation. Every
// operation takes the acting user's ID and enforces ownership before
// touching an entity.
package service
