package metrics

import "strconv"

func resourceLabel(resource int) string {
	return "R" + strconv.Itoa(resource)
}
