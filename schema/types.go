package schema

// Column describes one result column as reported by the driver.
type Column struct {
	Name     string
	TypeOID  uint32
	TypeName string
}

// ColumnNames returns the names of cols in order.
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
