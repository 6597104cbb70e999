// Package domain contains the core entities of the study assistant:
// users, their notes, and the quizzes generated from those notes. Each
// entity owns its validation rules; persistence and transport concerns
// live elsewhere.
package domain
