package syntacalc_test

import (
	"fmt"

	"github.com/zephyrtronium/syntacalc"
)

func ExampleContext_Apply() {
	ctx := syntacalc.NewContext(syntacalc.Places(6))
	for _, f := range []string{"sin", "cos", "log", "ln", "√"} {
		r, err := ctx.Apply(f, "60")
		if err != nil {
			fmt.Println(f, err)
			continue
		}
		fmt.Println(f, ctx.Format(r))
	}
	_, err := ctx.Apply("sqrt", "-1")
	fmt.Println(err)
	_, err = ctx.Apply("sqrt", "4+5")
	fmt.Println(err)

	// Output:
	// sin 0.866025
	// cos 0.5
	// log 1.778151
	// ln 4.094345
	// √ 7.745967
	// -1 outside domain of sqrt
	// cannot apply sqrt to non-number "4+5"
}
