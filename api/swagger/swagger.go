package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "StudyBuddy API", "description": "Study partner matching, groups and the admin console backend.", "version": "1.0.0"},
    "basePath": "/api",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"},
        "InternalKey": {"type": "apiKey", "in": "header", "name": "X-Internal-Key"}
    },
    "paths": {
        "/me": {
            "get": {"tags": ["Auth"], "summary": "Current user", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/announcements/active": {
            "get": {"tags": ["Announcements"], "summary": "Active announcements for the caller", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/announcements/{id}/dismiss": {
            "post": {"tags": ["Announcements"], "summary": "Dismiss an announcement", "produces": ["application/json"], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}]}
        },
        "/admin/announcements": {
            "get": {"tags": ["Admin Announcements"], "summary": "List announcements", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "status", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}]},
            "post": {"tags": ["Admin Announcements"], "summary": "Create announcement", "produces": ["application/json"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/admin/announcements/{id}": {
            "put": {"tags": ["Admin Announcements"], "summary": "Update announcement", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]},
            "delete": {"tags": ["Admin Announcements"], "summary": "Delete announcement", "produces": ["application/json"], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}]}
        },
        "/admin/analytics": {
            "get": {"tags": ["Admin Analytics"], "summary": "Platform analytics overview", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "range", "in": "query", "type": "string"}]}
        },
        "/admin/analytics/system": {
            "get": {"tags": ["Admin Analytics"], "summary": "Instrumentation snapshot", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/reports": {
            "post": {"tags": ["Reports"], "summary": "Report a user or content", "produces": ["application/json"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/feedback": {
            "post": {"tags": ["Feedback"], "summary": "Send product feedback", "produces": ["application/json"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/admin/reports": {
            "get": {"tags": ["Admin Reports"], "summary": "List reports", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "status", "in": "query", "type": "string"}, {"name": "contentType", "in": "query", "type": "string"}, {"name": "reason", "in": "query", "type": "string"}, {"name": "from", "in": "query", "type": "string"}, {"name": "to", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}]}
        },
        "/admin/reports/summary": {
            "get": {"tags": ["Admin Reports"], "summary": "Report and feedback counts per status", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/admin/reports/{id}": {
            "get": {"tags": ["Admin Reports"], "summary": "Get report", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}]},
            "patch": {"tags": ["Admin Reports"], "summary": "Update report status", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/admin/feedback": {
            "get": {"tags": ["Admin Feedback"], "summary": "List feedback", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "type", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}, {"name": "from", "in": "query", "type": "string"}, {"name": "to", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}]}
        },
        "/admin/feedback/{id}": {
            "patch": {"tags": ["Admin Feedback"], "summary": "Triage feedback", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/internal/moderation/flags": {
            "post": {"tags": ["Internal"], "summary": "Record flagged content", "produces": ["application/json"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"InternalKey": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/admin/flagged": {
            "get": {"tags": ["Admin Moderation"], "summary": "List flagged content", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "status", "in": "query", "type": "string"}, {"name": "severity", "in": "query", "type": "string"}, {"name": "contentType", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}]}
        },
        "/admin/flagged/stats": {
            "get": {"tags": ["Admin Moderation"], "summary": "Moderation queue stats", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/admin/flagged/{id}": {
            "get": {"tags": ["Admin Moderation"], "summary": "Get flagged content", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}]}
        },
        "/admin/flagged/{id}/review": {
            "post": {"tags": ["Admin Moderation"], "summary": "Review flagged content", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/admin/audit-logs": {
            "get": {"tags": ["Admin Audit"], "summary": "List audit logs", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "adminId", "in": "query", "type": "string"}, {"name": "action", "in": "query", "type": "string"}, {"name": "targetType", "in": "query", "type": "string"}, {"name": "from", "in": "query", "type": "string"}, {"name": "to", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}]},
            "delete": {"tags": ["Admin Audit"], "summary": "Purge audit logs (super admin)", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "olderThanDays", "in": "query", "type": "integer"}, {"name": "all", "in": "query", "type": "boolean"}]}
        },
        "/admin/audit-logs/{id}": {
            "delete": {"tags": ["Admin Audit"], "summary": "Delete one audit log entry (super admin)", "produces": ["application/json"], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}]}
        },
        "/internal/ai/usage": {
            "post": {"tags": ["Internal"], "summary": "Record an AI call", "produces": ["application/json"], "responses": {"202": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"InternalKey": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/admin/ai/usage": {
            "get": {"tags": ["Admin AI"], "summary": "List AI usage entries", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "userId", "in": "query", "type": "string"}, {"name": "model", "in": "query", "type": "string"}, {"name": "feature", "in": "query", "type": "string"}, {"name": "from", "in": "query", "type": "string"}, {"name": "to", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}]}
        },
        "/admin/ai/usage/summary": {
            "get": {"tags": ["Admin AI"], "summary": "AI usage summary", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "range", "in": "query", "type": "string"}]}
        },
        "/admin/ai/memory": {
            "get": {"tags": ["Admin AI"], "summary": "List assistant memories", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "userId", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}]}
        },
        "/admin/ai/memory/stats": {
            "get": {"tags": ["Admin AI"], "summary": "Assistant memory stats", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/admin/ai/memory/{id}": {
            "delete": {"tags": ["Admin AI"], "summary": "Delete a memory", "produces": ["application/json"], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}]}
        },
        "/admin/ai/memory/users/{userId}": {
            "delete": {"tags": ["Admin AI"], "summary": "Clear all memories of a user", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "userId", "in": "path", "type": "string", "required": true}]}
        },
        "/partners/search": {
            "get": {"tags": ["Partners"], "summary": "Find study partners", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "q", "in": "query", "type": "string"}, {"name": "subjects", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}, {"name": "interests", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}, {"name": "skillLevel", "in": "query", "type": "string"}, {"name": "studyStyle", "in": "query", "type": "string"}, {"name": "school", "in": "query", "type": "string"}, {"name": "availableDays", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}, {"name": "timezone", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}]}
        },
        "/groups": {
            "get": {"tags": ["Groups"], "summary": "List my groups", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Groups"], "summary": "Create a study group", "produces": ["application/json"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/groups/discover": {
            "get": {"tags": ["Groups"], "summary": "Discover public groups", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "q", "in": "query", "type": "string"}, {"name": "subject", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}]}
        },
        "/groups/invites": {
            "get": {"tags": ["Groups"], "summary": "My pending invites", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/groups/invites/{inviteId}": {
            "delete": {"tags": ["Groups"], "summary": "Cancel a pending invite", "produces": ["application/json"], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "inviteId", "in": "path", "type": "string", "required": true}]}
        },
        "/groups/invites/{inviteId}/respond": {
            "post": {"tags": ["Groups"], "summary": "Accept or decline an invite", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Envelope"}}, "410": {"description": "Gone", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "inviteId", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/groups/{id}": {
            "get": {"tags": ["Groups"], "summary": "Group detail with members", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}]},
            "patch": {"tags": ["Groups"], "summary": "Update a group", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]},
            "delete": {"tags": ["Groups"], "summary": "Delete a group", "produces": ["application/json"], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}]}
        },
        "/groups/{id}/join": {
            "post": {"tags": ["Groups"], "summary": "Join a public group", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}]}
        },
        "/groups/{id}/leave": {
            "post": {"tags": ["Groups"], "summary": "Leave a group", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}]}
        },
        "/groups/{id}/invites": {
            "post": {"tags": ["Groups"], "summary": "Invite users to a group", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/groups/{id}/transfer": {
            "post": {"tags": ["Groups"], "summary": "Hand the group to another member", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/groups/{id}/members/{userId}": {
            "patch": {"tags": ["Groups"], "summary": "Change a member's role", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "userId", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]},
            "delete": {"tags": ["Groups"], "summary": "Remove a member", "produces": ["application/json"], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "userId", "in": "path", "type": "string", "required": true}]}
        },
        "/admin/exports": {
            "post": {"tags": ["Admin Exports"], "summary": "Export an admin dataset", "produces": ["application/json"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Envelope"}}}, "security": [{"BearerAuth": []}], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}]}
        },
        "/exports/{token}": {
            "get": {"tags": ["Exports"], "summary": "Download an export through its signed link", "produces": ["application/octet-stream", "text/csv", "application/pdf"], "responses": {"200": {"description": "File", "schema": {"type": "file"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Envelope"}}, "410": {"description": "Gone", "schema": {"$ref": "#/definitions/Envelope"}}}, "parameters": [{"name": "token", "in": "path", "type": "string", "required": true}]}
        }
    },
    "definitions": {
        "Pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "pageSize": {"type": "integer"}, "totalCount": {"type": "integer"}, "totalPages": {"type": "integer"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}},
        "Envelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "pagination": {"$ref": "#/definitions/Pagination"}, "meta": {"type": "object"}}}
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
