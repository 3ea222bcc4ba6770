// Package naming derives the file names a compression job works with: the
// intermediate path written by the texture stage and the display name shown
// to the user.
//
// Both are pure functions of their inputs; the same path always yields the
// same intermediate name.
package naming
