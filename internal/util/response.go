package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

// Fail is the API error shape the frontend expects on 4xx/5xx.
func Fail(message string) Envelope {
	return Envelope{"success": false, "error": message}
}

func OK() Envelope {
	return Envelope{"success": true}
}
