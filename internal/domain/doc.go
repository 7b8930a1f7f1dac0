// Package domain defines the core business entities of the book
// recommendation service: users, books, and the reviews a book owns.
// Entities validate themselves; persistence and transport concerns
// live elsewhere.
package domain
