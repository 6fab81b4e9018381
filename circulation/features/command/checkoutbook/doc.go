// Package checkoutbook implements the Check Out Book use case.
//
// A checkout lends one copy of a title to a member. The copy counter, the member's issued counter
// and the new loan are written in one atomic change set, guarded by the book version and by
// conditional updates, so two librarians racing for the last copy cannot both succeed.
// A member who reserved the title has the reservation fulfilled by the checkout.
package checkoutbook
