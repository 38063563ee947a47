// Command example solves the diet problem from chapter 2 of the AMPL book.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bartolsthoorn/highsdex/dex"
	"github.com/bartolsthoorn/highsdex/model"
)

var foods = []string{"BEEF", "CHK", "FISH", "HAM", "MCH", "MTL", "SPG", "TUR"}

var costs = []float64{3.19, 2.59, 2.29, 2.89, 1.89, 1.99, 1.99, 2.49}

// nutrient amounts per food, in the order of foods
var amounts = map[string][]float64{
	"A":  {60, 8, 8, 40, 15, 70, 25, 60},
	"B1": {10, 20, 15, 35, 15, 15, 25, 15},
	"B2": {15, 20, 10, 10, 15, 15, 15, 10},
	"C":  {20, 0, 10, 40, 35, 30, 50, 20},
}

func main() {
	ctx := context.Background()

	foodSet, err := dex.NewIndexSet1D(foods, dex.WithName("FOOD"))
	if err != nil {
		log.Fatal(err)
	}
	nutrSet, err := dex.NewIndexSet1D([]string{"A", "B1", "B2", "C"}, dex.WithName("NUTR"))
	if err != nil {
		log.Fatal(err)
	}

	cost, err := dex.ParamDict1DFromPairs(foods, costs, dex.WithName("FOOD"), dex.WithValueName("COST"))
	if err != nil {
		log.Fatal(err)
	}
	var entries []dex.Entry[float64]
	for i := range nutrSet.All() {
		for j, f := range foods {
			entries = append(entries, dex.Entry[float64]{Key: dex.T(i, f), Value: amounts[i][j]})
		}
	}
	amt, err := dex.NewParamDictND(entries, dex.WithNames("NUTR", "FOOD"), dex.WithValueName("AMT"))
	if err != nil {
		log.Fatal(err)
	}

	m := model.New("diet")
	buy, err := dex.AddVariables1D(m, foodSet, dex.Spec(dex.Continuous, dex.UpperBound(100), dex.Named("BUY-QTY")))
	if err != nil {
		log.Fatal(err)
	}

	obj := m.Expr()
	for f, v := range buy.All() {
		obj.AddTerm(v, cost.Lookup(f))
	}
	if err := m.Minimize(obj); err != nil {
		log.Fatal(err)
	}

	for i := range nutrSet.All() {
		e := m.Expr()
		for f, v := range buy.All() {
			e.AddTerm(v, amt.Lookup(i, f))
		}
		if _, err := m.AddRange(700, e, 10000, "nutr-limits_"+i); err != nil {
			log.Fatal(err)
		}
	}

	res, err := model.Solve(ctx, m, model.WithLogOutput(os.Stdout))
	if err != nil {
		log.Fatal(err)
	}
	if !res.HasSolution() {
		log.Fatalf("diet: %s", res.Status)
	}

	qty, err := model.Values1D(res, buy)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Objective = %.2f\n", res.Objective)
	for f, q := range qty.All() {
		if q > 1e-9 {
			fmt.Printf("  %-5s %8.3f\n", f, q)
		}
	}
}
