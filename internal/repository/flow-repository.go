package repository

import (
	"github.com/Procesia/docs_service/internal/domain"
	"gorm.io/gorm"
)

type FlowRepository interface {
	Repository[domain.Flow]
	ListByCompany(companyID string) ([]domain.Flow, error)
	NodesForFlow(flowID string) ([]domain.FlowNode, error)
	EdgesForFlow(flowID string) ([]domain.FlowEdge, error)
	NodeByID(nodeID string) (*domain.FlowNode, error)
	ReplaceGraph(flowID string, nodes []domain.FlowNode, edges []domain.FlowEdge) error
}

type flowRepository struct {
	*CrudRepository[domain.Flow]
	db *gorm.DB
}

func NewFlowRepository(db *gorm.DB) FlowRepository {
	return &flowRepository{
		CrudRepository: NewCrudRepository[domain.Flow](db, "flows"),
		db:             db,
	}
}

func (r *flowRepository) ListByCompany(companyID string) ([]domain.Flow, error) {
	var flows []domain.Flow
	err := r.db.Where("company_id = ?", companyID).Find(&flows).Error
	if err != nil {
		return nil, r.wrap("list_by_company", err)
	}
	return flows, nil
}

func (r *flowRepository) NodesForFlow(flowID string) ([]domain.FlowNode, error) {
	var nodes []domain.FlowNode
	err := r.db.Where("flow_id = ?", flowID).Find(&nodes).Error
	if err != nil {
		return nil, r.wrap("nodes_for_flow", err)
	}
	return nodes, nil
}

func (r *flowRepository) EdgesForFlow(flowID string) ([]domain.FlowEdge, error) {
	var edges []domain.FlowEdge
	err := r.db.Where("flow_id = ?", flowID).Find(&edges).Error
	if err != nil {
		return nil, r.wrap("edges_for_flow", err)
	}
	return edges, nil
}

func (r *flowRepository) NodeByID(nodeID string) (*domain.FlowNode, error) {
	var nodes []domain.FlowNode
	err := r.db.Where("id = ?", nodeID).Limit(1).Find(&nodes).Error
	if err != nil {
		return nil, r.wrap("node_by_id", err)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return &nodes[0], nil
}

// ReplaceGraph swaps the whole node/edge set of a flow in one transaction,
// which is how the visual editor saves.
func (r *flowRepository) ReplaceGraph(flowID string, nodes []domain.FlowNode, edges []domain.FlowEdge) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("flow_id = ?", flowID).Delete(&domain.FlowEdge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("flow_id = ?", flowID).Delete(&domain.FlowNode{}).Error; err != nil {
			return err
		}
		for i := range nodes {
			nodes[i].FlowID = flowID
		}
		for i := range edges {
			edges[i].FlowID = flowID
		}
		if len(nodes) > 0 {
			if err := tx.Create(&nodes).Error; err != nil {
				return err
			}
		}
		if len(edges) > 0 {
			if err := tx.Create(&edges).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return r.wrap("replace_graph", err)
	}
	return nil
}
