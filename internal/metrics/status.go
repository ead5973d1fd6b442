package metrics

// statusLabel maps an operation error to the status label value.
func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
