// Package api handles incoming HTTP requests, routing, request
// validation, and response formatting. It adapts HTTP concerns to the
// application services for notes, quizzes, authentication, and the
// cached reference data.
package api
