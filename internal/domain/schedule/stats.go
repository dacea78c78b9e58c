package schedule

// Summarize считает общее число приемов, самого загруженного врача и
// самое популярное отделение. При равенстве побеждает тот, кто первым
// набрал максимум.
func Summarize(items []Schedule) Stats {
	st := Stats{Total: len(items)}

	st.BusiestDoctor, st.BusiestDoctorCount = topBy(items, func(s Schedule) string { return s.DoctorName })
	st.PopularDepartment, st.PopularDepartmentCount = topBy(items, func(s Schedule) string { return s.Department })

	return st
}

func topBy(items []Schedule, key func(Schedule) string) (string, int) {
	counts := make(map[string]int, len(items))
	var best string
	var bestCount int

	for _, s := range items {
		k := key(s)
		counts[k]++
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}

	return best, bestCount
}
