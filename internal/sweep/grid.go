package sweep

// Method1Grid returns the run counts 2, 2+s, ... up to maxM inclusive,
// with step s = max(1, maxM/100).
func Method1Grid(maxM int) []int {
	return arange(2, maxM, max(1, maxM/100))
}

// Method2Grid returns the scenario counts 100, 100+s, ... up to maxN
// inclusive, with step s = max(100, maxN/100).
func Method2Grid(maxN int) []int {
	return arange(100, maxN, max(100, maxN/100))
}

func arange(start, stop, step int) []int {
	if stop < start {
		return []int{}
	}
	out := make([]int, 0, (stop-start)/step+1)
	for v := start; v <= stop; v += step {
		out = append(out, v)
	}
	return out
}
