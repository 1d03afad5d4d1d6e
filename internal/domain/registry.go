package domain

import (
	"fmt"
	"sort"

	"github.com/gabinete-digital/gabinete-api/internal/schema"
)

// PasswordHasher hashes a plaintext password for storage.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Registry indexes entity definitions by URL path.
type Registry struct {
	byPath map[string]Definition
	paths  []string
}

// NewRegistry validates defs and indexes them. Paths and tables must be unique.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{byPath: make(map[string]Definition, len(defs))}
	tables := make(map[string]struct{}, len(defs))

	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.byPath[def.Path]; ok {
			return nil, fmt.Errorf("%w: path %q", ErrDuplicateEntity, def.Path)
		}
		if _, ok := tables[def.Table]; ok {
			return nil, fmt.Errorf("%w: table %q", ErrDuplicateEntity, def.Table)
		}
		r.byPath[def.Path] = def
		tables[def.Table] = struct{}{}
		r.paths = append(r.paths, def.Path)
	}

	sort.Strings(r.paths)
	return r, nil
}

// Lookup returns the definition served under path.
func (r *Registry) Lookup(path string) (Definition, error) {
	def, ok := r.byPath[path]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownEntity, path)
	}
	return def, nil
}

// All returns the definitions ordered by path.
func (r *Registry) All() []Definition {
	defs := make([]Definition, 0, len(r.paths))
	for _, p := range r.paths {
		defs = append(defs, r.byPath[p])
	}
	return defs
}

// Gabinete returns the registry of every gabinete entity. hasher is used by
// the usuario hooks.
func Gabinete(hasher PasswordHasher) (*Registry, error) {
	return NewRegistry(Definitions(hasher)...)
}

// Definitions lists the gabinete entities.
func Definitions(hasher PasswordHasher) []Definition {
	return []Definition{
		{
			Path:     "gabinete-tipo",
			Table:    "gabinete_tipo",
			IDColumn: "gabinete_tipo_id",
			Columns: columns(
				[]string{"gabinete_tipo_id", "gabinete_tipo_nome"},
				[]string{"gabinete_tipo_informacoes"},
			),
			Noun:              "Tipo de gabinete",
			EmptyMessage:      "Nenhum tipo de gabinete encontrado",
			DependentsMessage: "Tipo de gabinete não pode ser deletado pois possui gabinetes associados",
		},
		{
			Path:     "gabinete",
			Table:    "gabinete",
			IDColumn: "gabinete_id",
			Columns: columns(
				[]string{"gabinete_id", "gabinete_nome", "gabinete_estado", "gabinete_assinaturas", "gabinete_tipo"},
				[]string{"gabinete_criado_em", "gabinete_atualizado_em"},
			),
			Noun:                    "Gabinete",
			EmptyMessage:            "Nenhum gabinete encontrado",
			DependentsMessage:       "Gabinete não pode ser deletado pois possui usuários associados",
			InvalidReferenceMessage: "Tipo de gabinete inválido",
		},
		{
			Path:     "usuario-tipo",
			Table:    "usuario_tipo",
			IDColumn: "usuario_tipo_id",
			Columns: columns(
				[]string{"usuario_tipo_id", "usuario_tipo_nome", "usuario_tipo_descricao"},
				nil,
			),
			Noun:              "Tipo de usuário",
			EmptyMessage:      "Nenhum tipo de usuário encontrado",
			DependentsMessage: "Tipo de usuário não pode ser deletado pois possui usuários associados",
		},
		usuario(hasher),
		typeTable("orgao-tipo", "orgaos_tipos", "orgao_tipo", "Tipo de órgão", false,
			"Nenhum tipo de órgão encontrado",
			"Tipo de órgão não pode ser deletado pois possui órgãos associados"),
		{
			Path:           "orgao",
			Table:          "orgaos",
			IDColumn:       "orgao_id",
			GabineteColumn: "orgao_gabinete",
			Columns: columns(
				[]string{
					"orgao_id", "orgao_nome", "orgao_email", "orgao_municipio", "orgao_estado",
					"orgao_tipo", "orgao_criado_por", "orgao_gabinete",
				},
				[]string{
					"orgao_telefone", "orgao_endereco", "orgao_bairro", "orgao_cep",
					"orgao_informacoes", "orgao_site",
				},
			),
			Noun:         "Órgão",
			EmptyMessage: "Nenhum órgão encontrado",
		},
		typeTable("pessoa-tipo", "pessoas_tipos", "pessoa_tipo", "Tipo de pessoa", false,
			"Nenhum tipo de pessoa encontrado",
			"Tipo de pessoa não pode ser deletado pois possui pessoas associadas"),
		typeTable("pessoa-profissao", "pessoas_profissoes", "pessoas_profissoes", "Profissão", true,
			"Nenhuma profissão encontrada",
			"Profissão não pode ser deletada pois possui pessoas associadas"),
		{
			Path:           "pessoa",
			Table:          "pessoas",
			IDColumn:       "pessoa_id",
			GabineteColumn: "pessoa_gabinete",
			Columns: columns(
				[]string{
					"pessoa_id", "pessoa_nome", "pessoa_email", "pessoa_tipo", "pessoa_profissao",
					"pessoa_orgao", "pessoa_criada_por", "pessoa_gabinete",
				},
				[]string{
					"pessoa_telefone", "pessoa_endereco", "pessoa_bairro", "pessoa_municipio",
					"pessoa_estado", "pessoa_cep", "pessoa_sexo", "pessoa_facebook",
					"pessoa_instagram", "pessoa_x", "pessoa_foto", "pessoa_partido",
					"pessoa_informacoes", "pessoa_aniversario",
				},
			),
			Noun:         "Pessoa",
			Feminine:     true,
			EmptyMessage: "Nenhuma pessoa encontrada",
		},
		typeTable("documento-tipo", "documentos_tipos", "documento_tipo", "Tipo de documento", false,
			"Nenhum tipo de documento encontrado",
			"Tipo de documento não pode ser deletado pois possui documentos associados"),
		{
			Path:           "documento",
			Table:          "documentos",
			IDColumn:       "documento_id",
			GabineteColumn: "documento_gabinete",
			Columns: columns(
				[]string{
					"documento_id", "documento_titulo", "documento_arquivo", "documento_ano",
					"documento_tipo", "documento_orgao", "documento_criado_por", "documento_gabinete",
				},
				[]string{"documento_resumo", "documento_criado_em", "documento_atualizado_em"},
			),
			Noun:         "Documento",
			EmptyMessage: "Nenhum documento encontrado",
		},
		typeTable("emenda-status", "emendas_status", "emenda_status", "Status de emenda", false,
			"Nenhum status de emenda encontrado",
			"Status de emenda não pode ser deletado pois possui emendas associadas"),
		typeTable("emenda-objetivo", "emendas_objetivos", "emenda_objetivo", "Objetivo de emenda", false,
			"Nenhum objetivo de emenda encontrado",
			"Objetivo de emenda não pode ser deletado pois possui emendas associadas"),
		{
			Path:           "emenda",
			Table:          "emendas",
			IDColumn:       "emenda_id",
			GabineteColumn: "emenda_gabinete",
			Columns: columns(
				[]string{
					"emenda_id", "emenda_numero", "emenda_ano", "emenda_descricao", "emenda_status",
					"emenda_orgao", "emenda_municipio", "emenda_estado", "emenda_objetivo",
					"emenda_tipo", "emenda_criado_por", "emenda_gabinete",
				},
				[]string{"emenda_valor", "emenda_informacoes", "emenda_criada_em", "emenda_atualizada_em"},
			),
			Noun:         "Emenda",
			Feminine:     true,
			EmptyMessage: "Nenhuma emenda encontrada",
		},
		typeTable("postagem-status", "postagem_status", "postagem_status", "Status de postagem", false,
			"Nenhum status de postagem encontrado",
			"Status de postagem não pode ser deletado pois possui postagens associadas"),
		{
			Path:           "postagem",
			Table:          "postagens",
			IDColumn:       "postagem_id",
			GabineteColumn: "postagem_gabinete",
			Columns: columns(
				[]string{
					"postagem_id", "postagem_titulo", "postagem_conteudo", "postagem_status",
					"postagem_data_publicacao", "postagem_criado_por", "postagem_gabinete",
				},
				[]string{
					"postagem_data_atualizacao", "postagem_imagem", "postagem_imagem_nome",
					"postagem_imagem_tipo", "postagem_imagem_tamanho", "postagem_tags",
					"postagem_informacoes",
				},
			),
			Noun:         "Postagem",
			Feminine:     true,
			EmptyMessage: "Nenhuma postagem encontrada",
		},
		typeTable("clipping-tipo", "clipping_tipos", "clipping_tipo", "Tipo de clipping", false,
			"Nenhum tipo de clipping encontrado",
			"Tipo de clipping não pode ser deletado pois possui clippings associados"),
		{
			Path:           "clipping",
			Table:          "clippings",
			IDColumn:       "clipping_id",
			GabineteColumn: "clipping_gabinete",
			Columns: columns(
				[]string{
					"clipping_id", "clipping_titulo", "clipping_conteudo", "clipping_tipo",
					"clipping_fonte", "clipping_data", "clipping_criado_por", "clipping_gabinete",
				},
				[]string{
					"clipping_link", "clipping_arquivo", "clipping_arquivo_nome", "clipping_arquivo_tipo",
					"clipping_arquivo_tamanho", "clipping_tags", "clipping_informacoes",
				},
			),
			Noun:         "Clipping",
			EmptyMessage: "Nenhum clipping encontrado",
		},
	}
}

func usuario(hasher PasswordHasher) Definition {
	hashPassword := func(data map[string]any) error {
		raw, ok := data["usuario_senha"]
		if !ok || raw == nil {
			return nil
		}
		password, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: usuario_senha must be a string", ErrInvalidPassword)
		}
		if password == "" {
			return nil
		}
		hashed, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPassword, err)
		}
		data["usuario_senha"] = hashed
		return nil
	}

	return Definition{
		Path:           "usuario",
		Table:          "usuario",
		IDColumn:       "usuario_id",
		GabineteColumn: "usuario_gabinete",
		Columns: columns(
			[]string{
				"usuario_id", "usuario_tipo", "usuario_gabinete", "usuario_nome", "usuario_email",
				"usuario_telefone", "usuario_senha", "usuario_ativo", "usuario_gestor",
			},
			[]string{
				"usuario_aniversario", "usuario_token", "usuario_foto",
				"usuario_criado_em", "usuario_atualizado_em",
			},
		),
		Noun:                    "Usuário",
		EmptyMessage:            "Nenhum usuário encontrado",
		DependentsMessage:       "Usuário não pode ser deletado pois possui registros associados",
		InvalidReferenceMessage: "Gabinete inválido ou tipo de usuário não encontrados",
		Hidden:                  []string{"usuario_senha"},
		Raw:                     []string{"usuario_senha"},
		BeforeCreate: func(data map[string]any) error {
			if v, ok := data["usuario_ativo"]; !ok || v == nil {
				data["usuario_ativo"] = true
			}
			return hashPassword(data)
		},
		BeforeUpdate: func(data map[string]any) error {
			// An empty password on update keeps the stored hash.
			if v, ok := data["usuario_senha"]; ok && (v == nil || v == "") {
				delete(data, "usuario_senha")
			}
			return hashPassword(data)
		},
	}
}

// typeTable builds one of the per-gabinete lookup tables that share the
// <prefix>_{id,nome,descricao,criado_por,gabinete} layout.
func typeTable(path, table, prefix, noun string, feminine bool, empty, dependents string) Definition {
	return Definition{
		Path:           path,
		Table:          table,
		IDColumn:       prefix + "_id",
		GabineteColumn: prefix + "_gabinete",
		Columns: columns(
			[]string{prefix + "_id", prefix + "_nome", prefix + "_criado_por", prefix + "_gabinete"},
			[]string{prefix + "_descricao"},
		),
		Noun:              noun,
		Feminine:          feminine,
		EmptyMessage:      empty,
		DependentsMessage: dependents,
	}
}

func columns(required, optional []string) schema.Columns {
	cols := make(schema.Columns, len(required)+len(optional))
	for _, name := range required {
		cols[name] = schema.Column{Required: true}
	}
	for _, name := range optional {
		cols[name] = schema.Column{}
	}
	return cols
}
