package logger

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

// timestamp retourne l'heure courante au format court
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Info log une information générale (bleu)
func Info(message string, args ...interface{}) {
	color.Blue("[%s] %s", timestamp(), fmt.Sprintf(message, args...))
}

// Success log un succès (vert)
func Success(message string, args ...interface{}) {
	color.Green("[%s] ✓ %s", timestamp(), fmt.Sprintf(message, args...))
}

// Warning log un avertissement (jaune)
func Warning(message string, args ...interface{}) {
	color.Yellow("[%s] ⚠ %s", timestamp(), fmt.Sprintf(message, args...))
}

// Error log une erreur (rouge)
func Error(message string, args ...interface{}) {
	color.Red("[%s] ✗ %s", timestamp(), fmt.Sprintf(message, args...))
}

// Protocol log une violation de contrat serveur (magenta) : réponse 2xx
// dont le payload attendu est absent ou incomplet
func Protocol(message string, args ...interface{}) {
	color.Magenta("[%s] ✗ [PROTOCOL] %s", timestamp(), fmt.Sprintf(message, args...))
}

// Debug log un message de debug (cyan) - utilisé seulement en développement
func Debug(message string, args ...interface{}) {
	color.Cyan("[%s] DEBUG: %s", timestamp(), fmt.Sprintf(message, args...))
}
