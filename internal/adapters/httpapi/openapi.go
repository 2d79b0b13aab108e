package httpapi

func openapiSpec() map[string]any {
	idParam := []map[string]any{{
		"name":     "id",
		"in":       "path",
		"required": true,
		"schema":   map[string]any{"type": "integer", "format": "int64"},
	}}
	body := map[string]any{
		"required": true,
		"content": map[string]any{
			"application/json": map[string]any{"schema": map[string]any{"$ref": "#/components/schemas/VagaDTO"}},
		},
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "estacionamento",
			"version": "1.0.0",
		},
		"paths": map[string]any{
			"/vagas": map[string]any{
				"post": map[string]any{"summary": "Endpoint para adicionar uma vaga", "requestBody": body},
				"get":  map[string]any{"summary": "Endpoint para listar todas as vagas"},
			},
			"/vagas/{id}": map[string]any{
				"parameters": idParam,
				"get":        map[string]any{"summary": "Endpoint para exibir os dados de uma vaga pelo ID"},
				"put":        map[string]any{"summary": "Endpoint para atualizar os dados de uma vaga pelo ID", "requestBody": body},
				"delete":     map[string]any{"summary": "Endpoint para deletar uma vaga pelo ID"},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"VagaDTO": map[string]any{
					"type":     "object",
					"required": []string{"number", "floor"},
					"properties": map[string]any{
						"number":   map[string]any{"type": "integer", "minimum": 1},
						"floor":    map[string]any{"type": "integer"},
						"occupied": map[string]any{"type": "boolean"},
					},
				},
			},
		},
	}
}
