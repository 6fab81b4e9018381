// Package reactivatemember implements the Reactivate Member use case.
package reactivatemember
