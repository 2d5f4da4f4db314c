package repository

import (
	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	return r.DB.Create(doc).Error
}

func (r *DocumentRepository) FindByID(id uint) (*model.Document, error) {
	var doc model.Document
	err := r.DB.First(&doc, id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) FindByCourse(courseID uint) ([]model.Document, error) {
	var docs []model.Document
	err := r.DB.Where("course_id = ?", courseID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

// ReplaceChunks stores a document's chunk set and metadata in one
// transaction. Ingestion is all-or-none: a partial chunk set is never
// persisted, so a failed run leaves the previous state intact.
func (r *DocumentRepository) ReplaceChunks(doc *model.Document, chunks []model.DocumentChunk) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", doc.ID).Delete(&model.DocumentChunk{}).Error; err != nil {
			return err
		}
		if len(chunks) > 0 {
			if err := tx.CreateInBatches(chunks, 200).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Document{}).Where("id = ?", doc.ID).Updates(map[string]interface{}{
			"status":      doc.Status,
			"page_count":  doc.PageCount,
			"chunk_count": doc.ChunkCount,
		}).Error
	})
}

func (r *DocumentRepository) UpdateStatus(id uint, status model.DocumentStatus) error {
	return r.DB.Model(&model.Document{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes a document together with its chunks.
func (r *DocumentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&model.DocumentChunk{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Document{}, id).Error
	})
}

// FindChunksByCourse loads the course's full fragment corpus in stable
// insertion order, which the scorer's deterministic tie-breaking
// depends on.
func (r *DocumentRepository) FindChunksByCourse(courseID uint) ([]model.DocumentChunk, error) {
	var chunks []model.DocumentChunk
	err := r.DB.Where("course_id = ?", courseID).Order("id ASC").Find(&chunks).Error
	return chunks, err
}
