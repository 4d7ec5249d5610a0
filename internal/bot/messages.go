package bot

const msgHelp = `Onírico: los misterios del dormir.

Comandos:
/quiz - empezar o continuar el quiz (respondé con la letra de la opción)
/reiniciar - volver a intentar el quiz
/ciclos <horas> - calcular tus ciclos de sueño
/estrella <nivel> - mostrar u ocultar la duración de un nivel (1-4)
/ojo - dormir o despertar el ojo
/animacion - pausar o reanudar la animación de los ciclos
/menu [sección] - abrir el menú o ir a una sección
/diario - registrar un sueño en el diario
/suenos - ver los sueños guardados
/exportar - guardar tus respuestas del quiz en CSV
/salir - terminar`

const msgQuestion = "Pregunta %d de %d: %s"

const msgOption = "%s) %s"

const msgAnswerPrompt = "Tu respuesta (%s-%s):"

const msgCorrect = "¡Correcto! ⭐"

const msgIncorrect = "Ups, esa no era 😴 La correcta era la %s."

const msgExplanation = "💡 %s"

const msgRepeatedAnswer = "Ya respondiste esta pregunta, se cuenta solo la primera respuesta."

const msgInvalidLetter = "Elegí una de las opciones: %s-%s."

const msgResults = `%s Resultados del Quiz
%d de %d correctas
%s`

const msgQuizReset = "Quiz reiniciado. ¡Suerte!"

const msgCycles = "%g horas de sueño = %s"

const msgInvalidHours = "Indicá las horas de sueño, por ejemplo: /ciclos 7.5"

const msgStarRevealed = "⭐ Nivel %s: %s"

const msgStarHidden = "Nivel %s oculto."

const msgUnknownLevel = "Ese nivel no existe. Niveles: %s."

const msgEyeAsleep = "😴 El ojo se cerró. Shh..."

const msgEyeAwake = "👁 El ojo está despierto."

const msgAnimationPlaying = "▶ Animación de los ciclos en marcha."

const msgAnimationPaused = "⏸ Animación de los ciclos en pausa."

const msgMenuTitle = "Menú:"

const msgMenuItem = "%s %s"

const msgMenuClosed = "Menú cerrado."

const msgSection = "Sección activa: %s"

const msgUnknownSection = "Esa sección no existe. Secciones: %s."

const msgDiaryName = "Diario de sueños. ¿Cómo te llamás?"

const msgDiaryEmail = "¿Cuál es tu email?"

const msgDiaryAnswer = "Contanos tu sueño:"

const msgInvalidEmail = "Por favor, ingresá un email válido"

const msgInvalidField = "Revisá el campo %s, por favor."

const msgDiarySaved = "¡Gracias %s! Tu sueño ha sido registrado en el diario. 🌙"

const msgDiaryFailed = "No pudimos guardar tu sueño, probá más tarde."

const msgNoDreams = "Todavía no hay sueños guardados."

const msgDream = "%s · %s: %s"

const msgExportDisabled = "La exportación no está configurada (usá --export)."

const msgEasterEgg = "🎉 ¡Easter Egg activado!"

const msgLineTooLong = "El texto es demasiado largo, probá con uno más corto."

const msgUnknownCommand = "No entendí. Escribí /ayuda para ver los comandos."

const msgBye = "¡Dulces sueños! 🌙"
