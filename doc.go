// Package radicals implements a calculator that keeps square roots exact.
//
// Expressions are written the usual way: numbers, variables, the binary
// operators + - * / ^, unary minus, parentheses, and the functions sqrt, abs,
// sin, cos, tan, log (base 10), and ln. All binary operators are left
// associative, so "2^3^2" is 64, and negation binds tighter than
// exponentiation, so "-2^2" is 4.
//
// Every evaluation produces a float64. Where the operations allow it, the
// result also carries an exact form, a sum of a rational constant and terms
// c√r with square-free r, so that "sqrt(8) + sqrt(2)" gives 3√2 and
// "sqrt(3)^2" gives exactly 3. Whenever exactness cannot be proven, the exact
// form is simply absent; it is never wrong.
//
// Variables come from a Store, consulted once per evaluation. Vars is the
// simplest one; package varstore has stores with constants, a last answer
// slot, and persistence.
package radicals
