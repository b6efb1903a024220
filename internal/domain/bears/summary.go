package bears

// SummaryCounts son los conteos que muestra el listado. No se persisten.
type SummaryCounts struct {
	Male     int
	Female   int
	LeftEar  int
	RightEar int
}

// Summarize clasifica cada oso en exactamente un bucket por dimensión.
// Todo lo que no sea "M" cuenta como hembra y todo lo que no sea "Left"
// como oreja derecha (incluye vacíos o valores inesperados).
func Summarize(items []Bear) SummaryCounts {
	var c SummaryCounts
	for _, b := range items {
		if b.Sex == SexMale {
			c.Male++
		} else {
			c.Female++
		}
		if b.EarApplied == EarLeft {
			c.LeftEar++
		} else {
			c.RightEar++
		}
	}
	return c
}
