package dialect

// TiDB speaks the MySQL wire dialect, pagination included.
func NewTiDBDialect() Dialect {
	return newMySQLFamily(TiDB)
}
