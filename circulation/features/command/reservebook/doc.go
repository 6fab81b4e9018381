// Package reservebook implements the Reserve Book use case.
//
// Members queue for titles without a copy on the shelf. Reservations are served first come,
// first served by the checkout, and the title shows as reserved while the queue is not empty.
package reservebook
