package ai

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/thomas-vilte/matestory/internal/models"
)

// SystemInstruction frames the model as a story writer before any
// few-shot content is sent.
const SystemInstruction = "You are a helpful assistant who writes detailed, well-structured software user stories for issue trackers. Always follow the requested markdown structure exactly."

const storyStructurePromptEN = `Generate a user story with the following structure:

# [A concise, descriptive title for the user story]

## User Story
As a [type of user], I want [goal] so that [benefit].

## Acceptance Criteria
- [ ] [First acceptance criterion]
- [ ] [Second acceptance criterion]
- [ ] [Additional criteria as needed]

## Technical Details
[Implementation notes, constraints, and affected components]

## Testing Strategy
[How this story should be verified]

## Definition of Done
- [ ] [Condition that must hold before the story is complete]`

const storyStructurePromptES = `Generá una historia de usuario con la siguiente estructura:

# [Un título conciso y descriptivo para la historia de usuario]

## Historia de Usuario
Como [tipo de usuario], quiero [objetivo] para [beneficio].

## Criterios de Aceptación
- [ ] [Primer criterio de aceptación]
- [ ] [Segundo criterio de aceptación]
- [ ] [Criterios adicionales según haga falta]

## Detalles Técnicos
[Notas de implementación, restricciones y componentes afectados]

## Estrategia de Testing
[Cómo se verifica esta historia]

## Definición de Terminado
- [ ] [Condición que tiene que cumplirse antes de cerrar la historia]`

const sampleResponseEN = `# Implement User Authentication System

## User Story
As a registered user, I want to log in with my email and password so that I can access my personal dashboard securely.

## Acceptance Criteria
- [ ] Users can log in with a valid email and password
- [ ] Invalid credentials show a clear error message without revealing which field was wrong
- [ ] Sessions expire after 24 hours of inactivity
- [ ] Failed login attempts are rate limited

## Technical Details
Use salted password hashing, issue a signed session token on success and store it in an http-only cookie. The login endpoint lives in the auth service and must not leak timing information.

## Testing Strategy
Unit tests for the credential check and token issuance, integration tests for the login endpoint covering success, bad password and rate limiting.

## Definition of Done
- [ ] All acceptance criteria verified by automated tests
- [ ] Security review of the credential flow completed
- [ ] Documentation for the login endpoint published`

const sampleResponseES = `# Implementar Sistema de Autenticación de Usuarios

## Historia de Usuario
Como usuario registrado, quiero iniciar sesión con mi email y contraseña para acceder a mi panel personal de forma segura.

## Criterios de Aceptación
- [ ] Los usuarios pueden iniciar sesión con email y contraseña válidos
- [ ] Las credenciales inválidas muestran un error claro sin revelar qué campo falló
- [ ] Las sesiones expiran después de 24 horas de inactividad
- [ ] Los intentos fallidos de login tienen rate limiting

## Detalles Técnicos
Usar hashing de contraseñas con salt, emitir un token de sesión firmado y guardarlo en una cookie http-only. El endpoint de login vive en el servicio de auth y no debe filtrar información de timing.

## Estrategia de Testing
Tests unitarios para la verificación de credenciales y la emisión del token, tests de integración para el endpoint de login cubriendo éxito, contraseña incorrecta y rate limiting.

## Definición de Terminado
- [ ] Todos los criterios de aceptación verificados con tests automatizados
- [ ] Revisión de seguridad del flujo de credenciales completada
- [ ] Documentación del endpoint de login publicada`

const completionPromptTemplate = `Based on the provided information, generate a comprehensive user story following the structure above.

Feature title: {{.Title}}
Description: {{.Description}}
Complexity: {{.Complexity}}
Estimated duration: {{.Duration}}

Please generate a complete user story that addresses this requirement.`

// PromptData feeds the completion prompt template.
type PromptData struct {
	Title       string
	Description string
	Complexity  string
	Duration    string
}

// StructurePrompt returns the few-shot structure prompt for the given
// language, defaulting to English.
func StructurePrompt(lang string) string {
	if lang == "es" {
		return storyStructurePromptES
	}
	return storyStructurePromptEN
}

// SampleResponse returns the golden few-shot answer matching the
// structure prompt for the given language.
func SampleResponse(lang string) string {
	if lang == "es" {
		return sampleResponseES
	}
	return sampleResponseEN
}

// BuildCompletionPrompt renders the final user turn from the story
// parameters.
func BuildCompletionPrompt(params models.StoryParams) (string, error) {
	return RenderPrompt("completion", completionPromptTemplate, PromptData{
		Title:       params.Title,
		Description: params.Description,
		Complexity:  params.Complexity,
		Duration:    params.Duration,
	})
}

// RenderPrompt executes a prompt template against its data.
func RenderPrompt(name, tmplStr string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering template %s: %w", name, err)
	}
	return buf.String(), nil
}
