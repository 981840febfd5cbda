// Package item contains the OrderItem aggregate: a single dish on a kitchen
// ticket, its preparation status machine, and the optimistic-concurrency
// version fence used to detect conflicting writers.
package item
