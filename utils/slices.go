package utils

func Map[T1, T2 any](slice []T1, f func(T1) T2) []T2 {
	if slice == nil {
		return nil
	}

	result := make([]T2, len(slice))
	for i, e := range slice {
		result[i] = f(e)
	}

	return result
}

// MapErr is Map for a fallible f. It stops at the first error.
func MapErr[T1, T2 any](slice []T1, f func(T1) (T2, error)) ([]T2, error) {
	if slice == nil {
		return nil, nil
	}

	result := make([]T2, len(slice))
	for i, e := range slice {
		var err error
		if result[i], err = f(e); err != nil {
			return nil, err
		}
	}

	return result, nil
}
