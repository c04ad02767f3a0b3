package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type writerMock struct {
	mock.Mock
}

func (m *writerMock) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *writerMock) Close() error {
	return m.Called().Error(0)
}

type ProducerSuite struct {
	suite.Suite
	wm *writerMock
	p  *Producer
}

func (s *ProducerSuite) SetupTest() {
	s.wm = &writerMock{}
	s.p = newProducerWithWriter(s.wm)
}

func (s *ProducerSuite) TestNewProducer_NotNil() {
	s.Require().NotNil(NewProducer([]string{"localhost:0"}))
}

func (s *ProducerSuite) TestPublish_OK() {
	s.wm.
		On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 {
				return false
			}
			m := msgs[0]
			return m.Topic == "shipments" && string(m.Key) == "CS0000001" && string(m.Value) == "{}" &&
				len(m.Headers) == 1 && m.Headers[0].Key == "event-type"
		})).
		Return(nil).
		Once()

	err := s.p.Publish(context.Background(), "shipments", []byte("CS0000001"), []byte("{}"),
		kafka.Header{Key: "event-type", Value: []byte("shipment.created")})
	s.Require().NoError(err)
	s.wm.AssertExpectations(s.T())
}

func (s *ProducerSuite) TestPublish_ErrorWrapped() {
	s.wm.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

	err := s.p.Publish(context.Background(), "shipments", []byte("k"), []byte("v"))
	s.Require().Error(err)
	s.Require().Contains(err.Error(), "kafka publish")
	s.wm.AssertExpectations(s.T())
}

func (s *ProducerSuite) TestClose_ErrorWrapped() {
	s.wm.On("Close").Return(errors.New("closed")).Once()
	err := s.p.Close()
	s.Require().Error(err)
	s.Require().Contains(err.Error(), "kafka close")
}

func TestProducerSuite(t *testing.T) {
	suite.Run(t, new(ProducerSuite))
}
