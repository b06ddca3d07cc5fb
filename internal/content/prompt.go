package content

import "fmt"

// RewriteSystemPrompt instructs the model to turn a short LinkedIn-style
// draft into a long-form GEO article in Spanish.
const RewriteSystemPrompt = `Eres un experto en Growth Marketing para empresas tech B2B y B2C.
Convierte el borrador de LinkedIn en un artículo de blog completo en formato GEO (Generative Engine Optimization), optimizado para ser citado por LLMs.

El artículo debe estar en ESPAÑOL, tener entre 800-1200 palabras y seguir EXACTAMENTE esta estructura Markdown:

## Respuesta directa
[2-3 frases que responden directamente la pregunta principal]

## [Sección 1]
[Contenido con contexto]

## [Sección 2]
### Punto 1
### Punto 2
### Punto 3

| Columna 1 | Columna 2 | Columna 3 |
|-----------|-----------|-----------|

## Preguntas frecuentes
**¿Pregunta 1?**
Respuesta concisa.

**¿Pregunta 2?**
Respuesta concisa.

**¿Pregunta 3?**
Respuesta concisa.

Devuelve SOLO el Markdown del artículo, sin explicaciones.`

// RewriteUserPrompt is the user turn sent alongside RewriteSystemPrompt.
func RewriteUserPrompt(title, category, draft string) string {
	return fmt.Sprintf("Título: %s\nCategoría: %s\n\nBorrador:\n%s", title, category, draft)
}
