package cache

import "fmt"

// Key builds a cache key from an endpoint name and its request parameters,
// so identical parameter tuples always map to the same entry.
func Key(endpoint string, params ...interface{}) string {
	key := endpoint
	for _, param := range params {
		key = fmt.Sprintf("%s:%v", key, param)
	}
	return key
}
