// Package feedback provides the filter pair placed in an echo's feedback
// path: a one-pole leaky differencer (high-pass stage) followed by a
// one-pole low-pass.
//
// The high-pass stage is not the textbook one-pole high-pass. With input x,
// input memory x1 and coefficient hp it computes
//
//	y  = x - x1
//	x1 = x + hp*(y - x1)
//
// and the low-pass stage, with memory z1 and coefficient lp, computes
//
//	z  = y + lp*(z1 - y)
//	z1 = z
//
// The x1 update has its pole at -2*hp, so hp is limited to
// MaxHighPassCoefficient to keep the memories bounded for bounded input.
// Within that range the recurrence is reproduced exactly.
//
// Memories persist across calls and are only zeroed by New or Reset.
package feedback
