// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

func GetCompareExample() Example {
	// Classifies the argument relative to 8 using comparisons, conditional
	// jumps and a multiplication with an immediate operand.
	return exampleSpec{
		Name: "compare",
		code: "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
			"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
			"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99",
		reference: compare,
	}.build()
}

func compare(n int) int {
	switch {
	case n < 8:
		return 999
	case n == 8:
		return 1000
	}
	return 1001
}

func GetSumExample() Example {
	// n at 19, the accumulator at 20:
	//   0: in n
	//   2: if n == 0 goto 16
	//   5: acc += n
	//   9: n -= 1
	//  13: goto 2
	//  16: out acc
	return exampleSpec{
		Name:      "sum",
		code:      "3,19,1006,19,16,1,20,19,20,1001,19,-1,19,1105,1,2,4,20,99,0,0",
		reference: sum,
	}.build()
}

func sum(n int) int {
	return n * (n + 1) / 2
}

func GetFibonacciExample() Example {
	// n at 27, a at 28, b at 29, t at 30:
	//   0: in n
	//   2: if n == 0 goto 24
	//   5: t = a + b
	//   9: a = b
	//  13: b = t
	//  17: n -= 1
	//  21: goto 2
	//  24: out a
	return exampleSpec{
		Name: "fibonacci",
		code: "3,27,1006,27,24,1,28,29,30,1001,29,0,28,1001,30,0,29," +
			"1001,27,-1,27,1105,1,2,4,28,99,0,0,1,0",
		reference: fibonacci,
	}.build()
}

func fibonacci(n int) int {
	a, b := 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a
}
