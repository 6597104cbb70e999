// Package generation defines the boundary between the application core
// and the language model that turns note text into quizzes.
package generation
