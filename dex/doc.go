// Package dex provides the keyed containers used to declare optimization
// models: index sets, parameter dictionaries and variable dictionaries.
//
// An index set is the authoritative universe of keys. One-dimensional sets hold
// scalar keys; N-dimensional sets hold fixed-length Tuples, either listed
// explicitly or built as a Cartesian product:
//
//	food, _ := dex.NewIndexSet1D([]string{"BEEF", "CHK", "FISH"}, dex.WithName("FOOD"))
//	nutr, _ := dex.NewIndexSet1D([]string{"A", "C"}, dex.WithName("NUTR"))
//	pairs, _ := dex.NewIndexSetProduct([]dex.Dimension{nutr, food})
//
// Parameter dictionaries are sparse numeric mappings whose Lookup returns zero
// for absent keys. N-dimensional dictionaries aggregate over wildcard patterns,
// where Any marks a free position:
//
//	total, err := amt.SumPattern("A", dex.Any) // every food for nutrient A
//
// Variable dictionaries map keys to decision variables owned by a Modeler.
// They can only be created by AddVariables1D and AddVariablesND, are bound to
// the index set they were created from, and are immutable afterwards.
package dex
