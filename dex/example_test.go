package dex_test

import (
	"fmt"

	"github.com/bartolsthoorn/highsdex/dex"
)

func ExampleParamDictND_SumPattern() {
	amt, _ := dex.NewParamDictND([]dex.Entry[float64]{
		{Key: dex.T("A", "BEEF"), Value: 60},
		{Key: dex.T("A", "CHK"), Value: 8},
		{Key: dex.T("C", "BEEF"), Value: 20},
	}, dex.WithNames("NUTR", "FOOD"))

	total, _ := amt.SumPattern("A", dex.Any)
	fmt.Println(total)
	fmt.Println(amt.Lookup("Z", "Z"))

	_, err := amt.SumPattern(dex.Any, dex.Any)
	fmt.Println(err)
	// Output:
	// 68
	// 0
	// dex: ParamDictND.SumPattern: invalid wildcard pattern: pattern has only wildcards
}

func ExampleNewIndexSetProduct() {
	nutr, _ := dex.NewIndexSet1D([]string{"A", "C"}, dex.WithName("NUTR"))
	pairs, _ := dex.NewIndexSetProduct([]dex.Dimension{nutr, dex.NamedDim("DAY", 1, 2)})

	fmt.Println(pairs)
	fmt.Println(pairs.Contains("C", 2))
	// Output:
	// IndexSetND: (NUTR, DAY) [(A, 1) (A, 2) (C, 1) (C, 2)]
	// true
}
